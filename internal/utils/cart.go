package utils

// cart.go implements the cookie codec for the client-side shopping cart.
// The cart is a plain JSON object mapping product ids (as decimal strings)
// to quantities, stored in an unsigned cookie named "carrinho".  For a
// second-hand store every piece is unique, so quantities are always 1.

import (
	"encoding/json"
	"net/http"
	"net/url"
	"time"
)

// CartCookieName is the cookie carrying the serialized cart.
const CartCookieName = "carrinho"

// CartMaxAge is how long the cart cookie lives on the client.
const CartMaxAge = 7 * 24 * time.Hour

// ReadCart decodes the cart cookie from a request.  A missing or corrupted
// cookie yields an empty cart rather than an error; the client simply
// starts over.
func ReadCart(r *http.Request) map[string]int {
	ck, err := r.Cookie(CartCookieName)
	if err != nil || ck.Value == "" {
		return map[string]int{}
	}
	raw, err := decodeCookieValue(ck.Value)
	if err != nil {
		return map[string]int{}
	}
	cart := map[string]int{}
	if err := json.Unmarshal([]byte(raw), &cart); err != nil {
		return map[string]int{}
	}
	return cart
}

// WriteCart serializes the cart into the response cookie with a 7-day
// max-age.  JSON braces are not valid in cookie values per RFC 6265, so the
// payload is URL-escaped.
func WriteCart(w http.ResponseWriter, cart map[string]int) {
	b, err := json.Marshal(cart)
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:   CartCookieName,
		Value:  encodeCookieValue(string(b)),
		Path:   "/",
		MaxAge: int(CartMaxAge / time.Second),
	})
}

func encodeCookieValue(s string) string { return url.QueryEscape(s) }

func decodeCookieValue(s string) (string, error) { return url.QueryUnescape(s) }

// ClearCart expires the cart cookie on the client.
func ClearCart(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:   CartCookieName,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})
}
