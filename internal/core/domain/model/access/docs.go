// Package access models who is calling: the Principal with its Role and
// optional branch binding, and the Actions the access guard decides on.
package access
