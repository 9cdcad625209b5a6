// Package middleware contains HTTP middleware specific to this service.
package middleware
