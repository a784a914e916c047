package backup

// allowedTables es la allow-list fija de tablas que los motores de respaldo y
// restauración pueden tocar. Cualquier otro nombre recibido del caller se
// rechaza con ErrTableNotAllowed antes de ejecutar lectura alguna (defensa
// contra exfiltración de tablas arbitrarias vía nombres provistos por el usuario).
var allowedTables = map[string]struct{}{
	"products":      {},
	"issuances":     {},
	"stock_entries": {},
	"warehouses":    {},
	"users":         {},
	"settings":      {},
}

// IsTableAllowed indica si la tabla está en la allow-list de respaldos.
func IsTableAllowed(table string) bool {
	_, ok := allowedTables[table]
	return ok
}
