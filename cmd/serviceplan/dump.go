package main

import (
	"serviceplan/pkg/types"

	"github.com/k0kubun/pp/v3"
	"github.com/urfave/cli/v2"
)

const masked = "********"

var configCommand = &cli.Command{
	Name:  "config",
	Usage: "Print the effective configuration with secrets masked",
	Action: func(cCtx *cli.Context) error {
		config, err := loadConfig(cCtx)
		if err != nil {
			return err
		}

		printer := pp.New()
		printer.SetColoringEnabled(false)
		_, err = printer.Println(redactConfig(*config))
		return err
	},
}

func redactConfig(c types.Config) types.Config {
	for _, secret := range []*string{
		&c.DatabaseURL,
		&c.EditorPasswordHash,
		&c.AdminPasswordHash,
		&c.CookieHashKey,
		&c.CookieBlockKey,
		&c.CSRFKey,
	} {
		if *secret != "" {
			*secret = masked
		}
	}
	return c
}
