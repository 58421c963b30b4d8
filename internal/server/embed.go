package server

import (
	"embed"
	"log"
)

//go:embed static
var embedFS embed.FS

// indexHTML returns the dashboard page content as bytes
func indexHTML() []byte {
	data, err := embedFS.ReadFile("static/index.html")
	if err != nil {
		log.Fatalf("埋め込みindex.htmlの読み込みに失敗: %v", err)
	}
	return data
}
