// Package rule provides the routing Rule aggregate and its weight-bucket
// configuration. Rules are priority-ordered; only weight-type rules carry an
// evaluated configuration, other types are preserved opaquely for forward
// compatibility.
package rule
