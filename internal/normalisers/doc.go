// Package normalisers provides implementations of the Normaliser
// interface for the supported upload formats. Each normaliser converts
// one format into the uniform page/chapter model.
//
// Normalisers are registered with the Registry at startup.
package normalisers
