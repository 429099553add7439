// Package main hexauth authentication API
package main

import "github.com/hexauth/hexauth/internal"

func main() {
	internal.Run()
}
