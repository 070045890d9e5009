// Package department provides the Department entity, the reference data that
// routing decisions resolve against. Departments are owned by an external
// administrative collaborator and are read-only during rule evaluation.
package department
