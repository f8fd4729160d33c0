// file: controllers/main_test.go
package controllers

import (
	"os"
	"testing"

	"zeroun-site/websocket"
)

func TestMain(m *testing.M) {
	go websocket.HandleMessages() // start only once

	code := m.Run()
	os.Exit(code)
}
