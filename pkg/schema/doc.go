// Package schema provides the field validators used by wizard steps.
//
// Every validator is a pure predicate over the raw string a user typed. There
// is no I/O and no coercion: an empty string fails every type, including the
// numeric ones, which never treat "" as zero.
//
// Basic usage:
//
//	s := schema.Schema{
//	    "srn":  schema.SRN(),
//	    "cgpa": schema.CGPA(),
//	    "sem":  schema.Semester(),
//	}
//
//	if err := schema.Validate(s, map[string]string{"srn": "PES1UG20CS001"}); err != nil {
//	    for _, e := range schema.ValidationErrors(err) {
//	        // Handle per-field failures
//	    }
//	}
//
// Types are looked up by kind when a wizard definition is compiled:
//
//	t, err := schema.Lookup(domain.KindPhone)
//
// Custom validators can be registered for domain-specific rules:
//
//	roll := schema.Custom("roll", func(raw string) error {
//	    if len(raw) != 6 {
//	        return fmt.Errorf("must be 6 characters")
//	    }
//	    return nil
//	})
package schema
