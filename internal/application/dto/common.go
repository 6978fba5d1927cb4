package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// AccessDeniedResponse 401 sin sesión: la UI redirige al portal.
type AccessDeniedResponse struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	PortalURL string `json:"portal_url"`
}
