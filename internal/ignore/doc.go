// Package ignore finds zhfmt directives inside HTML comments and turns
// ignore patterns into byte ranges the reporter must leave alone.
//
//	<!-- zhfmt disabled -->
//	<!-- zhfmt ignore: REGEX -->
//
// A pattern with a named group "ignore" protects only that group.
package ignore
