// Package chain provides a generic doubly linked list with a movable cursor
// and a text codec that persists the list as a bracketed, comma-separated
// sequence of brace-delimited objects.
//
// The text format is a restricted subset of JSON. The decoder finds object
// boundaries by counting braces and hands each object to a per-record Codec;
// it is not a general JSON parser. Braces inside string values are counted
// and quote characters inside values are not escaped.
package chain
