package handlers

import (
	"encoding/json"
	"net/http"

	"purem-oda-shop/services/shop-api/internal/service"
)

// loginReq fields stay raw: any JSON type is accepted for either field and
// only a non-empty string password logs in.
type loginReq struct {
	Email    json.RawMessage `json:"email"`
	Password json.RawMessage `json:"password"`
}

type loginResp struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Login handles POST /api/login
func Login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := decodeOptional(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}

	var password string
	_ = json.Unmarshal(req.Password, &password)

	msg, err := service.Login(emailText(req.Email), password)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, loginResp{Success: false, Message: "Password is required"})
		return
	}
	writeJSON(w, http.StatusOK, loginResp{Success: true, Message: msg})
}

// emailText renders the email the way it was sent: strings bare, other
// values as their JSON text, a missing field as "undefined".
func emailText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return "undefined"
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}
