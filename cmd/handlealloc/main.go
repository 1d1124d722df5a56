package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/fulldump/goconfig"

	"github.com/fulldump/handlealloc/bootstrap"
	"github.com/fulldump/handlealloc/configuration"
	"github.com/fulldump/handlealloc/registry"
)

var banner = `
 _                     _ _            _ _
| |__   __ _ _ __   __| | | ___  __ _| | | ___   ___
| '_ \ / _' | '_ \ / _' | |/ _ \/ _' | | |/ _ \ / __|
| | | | (_| | | | | (_| | |  __/ (_| | | | (_) | (__
|_| |_|\__,_|_| |_|\__,_|_|\___|\__,_|_|_|\___/ \___|
                                       version ` + bootstrap.VERSION + `
`

func main() {

	c := configuration.Default()
	goconfig.Read(c)

	if c.Version {
		fmt.Println("Version:", bootstrap.VERSION)
		return
	}

	if c.ShowBanner {
		fmt.Println(banner)
	}

	if c.ShowConfig {
		e := json.NewEncoder(os.Stdout)
		e.SetIndent("", "    ")
		e.Encode(c)
	}

	logger, err := c.NewLogger()
	if err != nil {
		log.Println("ERROR:", err.Error())
		os.Exit(-1)
	}
	defer logger.Sync()
	registry.SetLogger(logger)

	start, _, err := bootstrap.Bootstrap(c)
	if err != nil {
		log.Println("ERROR:", err.Error())
		os.Exit(-1)
	}

	start()
}
