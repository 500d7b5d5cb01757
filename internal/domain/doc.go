// Package domain contains the Task entity, its partial-update value and the
// validation rules shared by every layer. It has no dependency on storage or
// transport.
package domain
