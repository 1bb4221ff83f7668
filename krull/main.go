package main

import (
	"log"
	"net/http"
	_ "net/http/pprof"

	"github.com/tutils/krull/cmd"
)

func main() {
	go http.ListenAndServe(":", nil)
	log.SetFlags(log.Ltime | log.Lshortfile)
	cmd.Execute()
}
