// Command server boots the anagram-thief process: load config, build
// the shared dictionary and registry, and serve HTTP/WebSocket.
package main

import (
	"log"

	"github.com/anagramthief/core/internal/config"
	"github.com/anagramthief/core/internal/dictionary"
	"github.com/anagramthief/core/internal/registry"
	"github.com/anagramthief/core/internal/transport"
)

func main() {
	cfg := config.Load()
	dict := dictionary.Default()
	reg := registry.New(dict, cfg.BagRNGSeed)
	srv := transport.NewServer(reg, cfg)

	log.Printf("server: listening on %s (dictionary size=%d)", cfg.ListenAddr, dict.Len())
	if err := srv.ListenAndServe(cfg.ListenAddr); err != nil {
		log.Fatalf("server: %v", err)
	}
}
