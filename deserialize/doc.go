// Package deserialize provides the standard deserializers that turn raw
// parameter strings into arrays and objects, following the OpenAPI
// serialization styles.
//
// | Style          | Array       | Object (explode) | Object (no explode) |
// |----------------|-------------|------------------|---------------------|
// | simple         | a,b,c       | k=v,k2=v2        | k,v,k2,v2           |
// | form           | a,b,c       | k=v,k2=v2        | k,v,k2,v2           |
// | label          | .a.b.c      | .k=v.k2=v2       | .k,v,k2,v2          |
// | matrix         | ;id=a,b     | ;k=v;k2=v2       | ;id=k,v,k2,v2       |
// | spaceDelimited | a b c       | n/a              | n/a                 |
// | pipeDelimited  | a|b|c       | n/a              | n/a                 |
//
// Deserializers only split and pair values; they never convert types. Type
// conversion is the job of the parameter pipeline's coercion step.
//
// Malformed input is reported as *oaserrors.InvalidInputError.
package deserialize
