// Package storefront holds the read model of the remote commerce API as seen
// by the storefront: products, categories, the server-held cart and its order
// summary, plus the CommerceGateway port the application layer depends on.
//
// All cart totals are computed by the remote service. The helpers in this
// package only verify them; nothing here recomputes or corrects a summary.
package storefront
