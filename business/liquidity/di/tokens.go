// Package di contains dependency injection tokens for the liquidity context.
package di

import (
	"github.com/fd1az/reg-voting-power/business/liquidity/app"
	"github.com/fd1az/reg-voting-power/internal/di"
)

// Public service tokens - exposed to other modules
var (
	Valuator = di.NewToken[*app.Valuator]("liquidity.Valuator")
)

// GetValuator returns the registered Valuator.
func GetValuator(c di.ServiceRegistry) *app.Valuator {
	return di.GetToken(c, Valuator)
}
