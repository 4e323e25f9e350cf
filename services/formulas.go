package services

import (
	"fmt"
	"strings"
)

var formulaEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`, `"`, `\"`)

// quote escapes a value for use inside a quoted formula string literal.
func quote(v string) string {
	return formulaEscaper.Replace(v)
}

func findInField(needle, field string) string {
	return fmt.Sprintf(`FIND("%s", {%s})`, quote(needle), field)
}

func recordIDEquals(id string) string {
	return fmt.Sprintf(`RECORD_ID()="%s"`, quote(id))
}

func searchEither(needle, fieldA, fieldB string) string {
	return fmt.Sprintf(`OR(SEARCH("%s", {%s}), SEARCH("%s", {%s}))`, quote(needle), fieldA, quote(needle), fieldB)
}

func equalsEither(value, fieldA, fieldB string) string {
	return fmt.Sprintf(`OR({%s}="%s", {%s}="%s")`, fieldA, quote(value), fieldB, quote(value))
}

func fieldEquals(field, value string) string {
	return fmt.Sprintf(`{%s}='%s'`, field, quote(value))
}
