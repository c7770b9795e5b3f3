package core

import (
	"github.com/fox-one/pkg/store/db"
)

// Config burrow node config
type Config struct {
	DB db.Config `json:"db"`

	App struct {
		Location string `json:"location"`
	} `json:"app"`

	Ledger struct {
		// poll batch size for the event fold
		Batch int `json:"batch"`
	} `json:"ledger"`

	API struct {
		Port int `json:"port"`
	} `json:"api"`
}
