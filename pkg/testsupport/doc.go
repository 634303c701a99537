// Package testsupport holds fixture and golden helpers shared by tests.
package testsupport
