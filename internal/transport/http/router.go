package http

import (
	"net/http"

	"github.com/Suya12/cloud-computing-project/internal/metrics"
)

// Services bundles everything the router serves.
type Services struct {
	Orders        OrderService
	Match         Matcher
	Cart          CartService
	Credit        CreditService
	Users         UserService
	Stores        StoreService
	Notifications NotificationLister
}

// NewMux wires every route onto a ServeMux using method patterns.
func NewMux(svcs Services) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", HealthHandler)
	mux.Handle("GET /metrics", metrics.Handler())

	mux.Handle("POST /orders", HandleCreateOrder(svcs.Orders))
	mux.Handle("GET /orders", HandleListOrders(svcs.Orders))
	mux.Handle("GET /orders/{id}", HandleGetOrder(svcs.Orders))
	mux.Handle("DELETE /orders/{id}", HandleDeleteOrder(svcs.Orders))
	mux.Handle("GET /orders/my/{userId}", HandleMyOrders(svcs.Orders))

	mux.Handle("POST /match", HandleMatchOrder(svcs.Match))

	mux.Handle("POST /cart/add", HandleAddCartItem(svcs.Cart))
	mux.Handle("DELETE /cart/remove", HandleRemoveCartItem(svcs.Cart))
	mux.Handle("GET /cart/{userId}", HandleGetCart(svcs.Cart))

	mux.Handle("POST /users", HandleRegisterUser(svcs.Users))
	mux.Handle("PUT /users/{id}/address", HandleUpdateAddress(svcs.Users))
	mux.Handle("POST /users/credit/add/{id}", HandleAddCredit(svcs.Credit))
	mux.Handle("GET /users/credit/get/{id}", HandleGetCredit(svcs.Credit))

	mux.Handle("GET /stores", HandleStores(svcs.Stores))
	mux.Handle("GET /notifications/{userId}", HandleListNotifications(svcs.Notifications))

	mux.Handle("/", NotFoundHandler())

	return mux
}
