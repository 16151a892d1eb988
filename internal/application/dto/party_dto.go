package dto

// CreatePartyRequest entrada para crear un cliente o proveedor.
type CreatePartyRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// BulkPartyRequest entrada para carga masiva: una línea "nombre,email,teléfono"
// por registro; email y teléfono opcionales.
type BulkPartyRequest struct {
	Lines string `json:"lines"`
}

// PartyResponse salida de un cliente o proveedor.
type PartyResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}
