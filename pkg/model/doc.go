// Package model defines the declarative field IR shared by the schema
// compiler, the validator, the input filter, and every renderer. It is data
// only; rule evaluation lives in pkg/validation and keystroke policy in
// pkg/inputfilter.
package model
