package inventory

import "time"

// SetClock fija la hora de los movimientos nuevos; devuelve la función que restaura el reloj.
func SetClock(now func() time.Time) (restore func()) {
	prev := clock
	clock = now
	return func() { clock = prev }
}
