package handle

import (
	"encoding/json"
	"net/http"

	"vakyashuddhi/api/internal/auth"
)

type LoginRequest struct {
	IDToken string `json:"id_token"`
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
}

// Login exchanges an identity-provider token for this service's own pair,
// creating the user record on first sight.
func (h *Handle) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "POST only"})
		return
	}
	var req LoginRequest
	if err := decodeBody(r, &req); err != nil || req.IDToken == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "id_token is required"})
		return
	}
	id, err := h.verifier.Verify(r.Context(), req.IDToken)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid identity token"})
		return
	}
	if _, err := h.users.GetOrCreate(r.Context(), id.UID, id.Email, id.Name); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "user lookup failed"})
		return
	}
	h.writeTokenPair(w, id, true)
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Refresh rotates a refresh token: the presented jti is revoked and a fresh
// pair is issued.
func (h *Handle) Refresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "POST only"})
		return
	}
	var req RefreshRequest
	if err := decodeBody(r, &req); err != nil || req.RefreshToken == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "refresh_token is required"})
		return
	}
	id, jti, err := h.tokens.VerifyRefresh(req.RefreshToken)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid refresh token"})
		return
	}
	h.tokens.Revoke(jti)
	h.writeTokenPair(w, id, true)
}

func (h *Handle) writeTokenPair(w http.ResponseWriter, id auth.Identity, withRefresh bool) {
	access, err := h.tokens.AccessToken(id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "token issue failed"})
		return
	}
	resp := TokenResponse{
		AccessToken: access,
		TokenType:   "bearer",
		ExpiresIn:   int(auth.AccessTTL.Seconds()),
	}
	if withRefresh {
		refresh, err := h.tokens.RefreshToken(id)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "token issue failed"})
			return
		}
		resp.RefreshToken = refresh
	}
	writeJSON(w, http.StatusOK, resp)
}

func decodeBody(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}
