/*
Package dsl provides a Go DSL (Domain Specific Language) for programmatically constructing Placify wizards.

It allows developers to define step-field tables using a type-safe, fluent builder pattern
instead of relying on external YAML files. This is particularly useful for the built-in
wizards, unit testing, and leveraging IDE autocompletion/type-checking.

Example usage:

	package main

	import (
		"github.com/nocap-placify/placify/pkg/domain"
		"github.com/nocap-placify/placify/pkg/dsl"
	)

	func main() {
		b := dsl.New("mentor-session").
			Title("Mentor session").
			Target(domain.TargetMentorSessions)

		b.Step("student", "Which student?").
			Field("srn", "SRN", domain.KindSRN)

		b.Step("session", "Session notes").
			Field("date", "Date", domain.KindDate).
			Field("notes", "Notes", domain.KindText, dsl.Param("advice"), dsl.Multiline())

		b.Review("review", "Review and submit")

		def, err := b.Build()
		// ... register def with placify.New(placify.WithDefinitions(def))
	}
*/
package dsl
