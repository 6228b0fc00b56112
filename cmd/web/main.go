package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/palacegame/palace/server"
)

func main() {
	cfg, err := server.LoadConfig()
	if err != nil {
		log.Fatal(err.Error())
	}

	s := server.NewServer(server.NewInMemoryGameStore(), cfg)

	log.Printf("Listening on port %d...", cfg.Port)
	log.Fatal(http.ListenAndServe(fmt.Sprintf(":%d", cfg.Port), s))
}
