// Package fserror provides error inspection for failures while opening and
// reading the transcript. It turns raw OS errors into a FileAccess error whose
// message tells the operator what to fix.
package fserror
