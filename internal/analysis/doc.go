// Package analysis provides signal analysis for recorded runs.
//
//   - [FFT]: radix-2 fast Fourier transform
//   - [PowerSpectrum]: magnitude spectrum of a real signal
//   - [DominantFrequency]: strongest oscillation frequency in a trace
//
// Traces are padded to a power of two before transforming.
package analysis
