package config

import "errors"

type Kafka struct {
	Addresses []string `env:"KAFKA_ADDRESSES" envSeparator:","`
	Group     string   `env:"KAFKA_GROUP" envDefault:"coffee-roastery"`
}

func (k Kafka) Validate() error {
	if len(k.Addresses) == 0 {
		return errors.New("KAFKA_ADDRESSES is required")
	}
	return nil
}
