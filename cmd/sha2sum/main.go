package main

import "massnet.org/sha2/cmd/sha2sum/cmd"

//go:generate go run . gen -o ../../crypto/sha2/kat_digests_test.go -p sha2_test katEmpty256=sha256: katAbc512=sha512:abc

func main() {
	cmd.Execute()
}
