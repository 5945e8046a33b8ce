// Package main is the entry point for specforge, the cloud-schema to
// package-spec compiler.
package main

func main() {
	Execute()
}
