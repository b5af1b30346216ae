// Package format provides the standard parameter formats.
//
// A format is a named bundle of validation rules, preparation steps and
// documentation that applies to one parameter kind:
//
//	id := param.Must(param.String("id", param.WithFormat(format.UUID())))
//
// | Format    | Kind    | Prepared value                 |
// |-----------|---------|--------------------------------|
// | uuid      | string  | canonical lowercase string     |
// | date      | string  | time.Time (UTC midnight)       |
// | date-time | string  | time.Time                      |
// | byte      | string  | base64-decoded string          |
// | yes-no    | string  | bool                           |
// | email     | string  | string                         |
// | uri       | string  | string                         |
// | ipv4      | string  | string (canonical)             |
// | ipv6      | string  | string (canonical)             |
// | hostname  | string  | string (lowercase)             |
// | password  | string  | string                         |
// | int32     | integer | int64 within int32 range       |
// | int64     | integer | int64                          |
// | float     | number  | float64 within float32 range   |
// | double    | number  | float64                        |
//
// Formats are immutable values; [ByName] returns a fresh instance for a name
// without any process-wide registry.
package format
