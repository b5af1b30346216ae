// Package schema loads parameter definitions from declarative YAML (or JSON)
// documents.
//
// A document lists top-level parameters in order and may declare reusable
// definitions referenced with "$ref":
//
//	definitions:
//	  Tag:
//	    type: string
//	    minLength: 2
//	parameters:
//	  - name: id
//	    type: integer
//	    required: true
//	    coerce: true
//	  - name: tags
//	    type: array
//	    items:
//	      - $ref: "#/definitions/Tag"
//	  - name: end
//	    type: string
//	    format: date
//	    dependsOn:
//	      - start
//	      - name: mode
//	        when: value == "range"
//
// Keywords mirror the param options: type, description, required, nullable,
// default, enum, strictEnum, examples, deprecated, readOnly, writeOnly,
// coerce, format, minLength, maxLength, pattern, noTrim, sanitize,
// normalizeUnicode, minimum, maximum, exclusiveMinimum, exclusiveMaximum,
// multipleOf, strictDecimal, items, minItems, maxItems, uniqueItems,
// properties, additionalProperties, minProperties, maxProperties,
// dependsOn, dependsOnAbsenceOf, rules (expr-lang expressions) and
// jsonSchema (an embedded JSON Schema applied as one rule).
//
// Object properties keep their document order, which is also the order in
// which they are prepared.
//
// References may not form a cycle; a circular "$ref" chain is reported as a
// configuration error while loading, never at preparation time.
package schema
