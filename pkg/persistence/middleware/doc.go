// Package middleware provides decorators for ports.PathStore.
package middleware
