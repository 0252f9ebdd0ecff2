// Package scope define la frontera de visibilidad multi-tenant del motor.
// Todo caso de uso de escritura o lectura recibe un Scope explícito como
// argumento; nunca se lee de estado ambiente o global.
package scope

// Scope delimita la visibilidad por tenant de una petición.
// El valor cero es el scope abierto (vista administrativa sin restricción).
type Scope struct {
	tenant string
}

// Open devuelve el scope sin restricción.
func Open() Scope { return Scope{} }

// ForTenant devuelve un scope restringido al tenant dado.
func ForTenant(tenant string) Scope { return Scope{tenant: tenant} }

// Resolve deriva el scope efectivo de una petición a partir de la identidad
// del caller. Un caller atado a un tenant siempre recibe el scope de su
// tenant, ignorando cualquier override enviado por el cliente. Un caller sin
// tenant (administrador) recibe scope abierto, opcionalmente estrechado al
// tenant pedido; ese estrechamiento es conveniencia de UI, no un privilegio.
func Resolve(linkedTenant, requested string) Scope {
	if linkedTenant != "" {
		return ForTenant(linkedTenant)
	}
	if requested != "" {
		return ForTenant(requested)
	}
	return Open()
}

// Restricted indica si el scope está atado a un tenant.
func (s Scope) Restricted() bool { return s.tenant != "" }

// Tenant devuelve el tenant del scope ("" si es abierto).
func (s Scope) Tenant() string { return s.tenant }

// Allows indica si un supplier/tenant es visible bajo este scope.
func (s Scope) Allows(tenant string) bool {
	return !s.Restricted() || s.tenant == tenant
}
