/*
Package orm provides an easy to use db wrapper.

Break state space into prefixed sections called buckets. Each bucket contains
only one type of model and is addressed by the primary key of each entity.
Models are serialized with go-amino, which requires no generated code, and
are validated before every write.
*/
package orm
