// Package analysis inspects headless runs.
//
//   - [PowerSpectrum] and [DominantPeriod]: spectrum of a series via the
//     go-dsp FFT. On the moon offset series the dominant period is the
//     synodic period of the moon, about 2π/(0.08-0.02) ≈ 105 ticks at 1x.
//   - [Summarize] and [EventGaps]: plain statistics.
//   - [TraceToASCII]: the moon trajectory as a character plot.
package analysis
