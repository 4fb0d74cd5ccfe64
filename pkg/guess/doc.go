// Package guess implements the interactive number-guessing protocol.
//
// A Session runs in one of two modes. In ModeUser the session hides a secret
// number and answers each guess with TooLow, TooHigh or Correct while an
// attempt budget runs down. In ModeComputer the session bisects an inclusive
// range, proposing the midpoint and narrowing it from Higher / Lower / Correct
// signals supplied by a human oracle.
//
// The package holds no global state and performs no I/O; frontends own
// rendering and input collection.
package guess
