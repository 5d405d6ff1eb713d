package tests

//go:generate go run github.com/uevr-go/uevr/generator -config types.yaml -output generated/game.go
