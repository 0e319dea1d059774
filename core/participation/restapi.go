/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package participation

import (
	"encoding/json"
	"net/http"
	"path"
	"strings"

	"github.com/gorilla/mux"
	"github.com/hyperledger/fabric-bnc/core/chaincode"
	"github.com/hyperledger/fabric-lib-go/common/flogging"
	"github.com/pkg/errors"
)

const (
	URLBaseV1         = "/participation/v1/"
	URLBaseV1Networks = URLBaseV1 + "networks"
	networkKey        = "network"
	urlWithNetworkKey = URLBaseV1Networks + "/{" + networkKey + "}"
)

//go:generate counterfeiter -o mock/network_lister.go -fake-name NetworkLister . NetworkLister

// NetworkLister lists the business networks bound in a registry.
type NetworkLister interface {
	BusinessNetworks() []chaincode.Binding
}

// NetworkInfo describes one business network binding.
type NetworkInfo struct {
	Name        string `json:"name"`
	Profile     string `json:"profile"`
	ChaincodeID string `json:"chaincodeID"`
	URL         string `json:"url"`
}

// NetworkList is the response to a list of all networks.
type NetworkList struct {
	Networks []NetworkInfo `json:"networks"`
}

// ErrorResponse carries the error of a failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HTTPHandler handles the HTTP requests of the network participation API.
type HTTPHandler struct {
	logger   *flogging.FabricLogger
	enabled  bool
	networks NetworkLister
	router   *mux.Router
}

func NewHTTPHandler(enabled bool, networks NetworkLister) *HTTPHandler {
	handler := &HTTPHandler{
		logger:   flogging.MustGetLogger("participation"),
		enabled:  enabled,
		networks: networks,
		router:   mux.NewRouter(),
	}

	handler.router.HandleFunc(urlWithNetworkKey, handler.serveListOne).Methods(http.MethodGet)
	handler.router.HandleFunc(urlWithNetworkKey, handler.serveNotAllowed)

	handler.router.HandleFunc(URLBaseV1Networks, handler.serveListAll).Methods(http.MethodGet)
	handler.router.HandleFunc(URLBaseV1Networks, handler.serveNotAllowed)

	return handler
}

func (h *HTTPHandler) ServeHTTP(resp http.ResponseWriter, req *http.Request) {
	if !h.enabled {
		h.sendResponseJsonError(resp, http.StatusServiceUnavailable, errors.New("network participation API is disabled"))
		return
	}

	h.router.ServeHTTP(resp, req)
}

// List all networks
func (h *HTTPHandler) serveListAll(resp http.ResponseWriter, req *http.Request) {
	if err := negotiateContentType(req); err != nil {
		h.sendResponseJsonError(resp, http.StatusNotAcceptable, err)
		return
	}

	list := NetworkList{Networks: []NetworkInfo{}}
	for _, b := range h.networks.BusinessNetworks() {
		list.Networks = append(list.Networks, networkInfo(b))
	}
	h.sendResponseOK(resp, list)
}

// List the bindings of a single network
func (h *HTTPHandler) serveListOne(resp http.ResponseWriter, req *http.Request) {
	if err := negotiateContentType(req); err != nil {
		h.sendResponseJsonError(resp, http.StatusNotAcceptable, err)
		return
	}

	network := mux.Vars(req)[networkKey]
	if strings.TrimSpace(network) == "" {
		h.sendResponseJsonError(resp, http.StatusBadRequest, errors.New("invalid network name"))
		return
	}

	list := NetworkList{Networks: []NetworkInfo{}}
	for _, b := range h.networks.BusinessNetworks() {
		if b.Network == network {
			list.Networks = append(list.Networks, networkInfo(b))
		}
	}
	if len(list.Networks) == 0 {
		h.sendResponseJsonError(resp, http.StatusNotFound, errors.Errorf("business network [%s] has not been started", network))
		return
	}
	h.sendResponseOK(resp, list)
}

func (h *HTTPHandler) serveNotAllowed(resp http.ResponseWriter, req *http.Request) {
	resp.Header().Set("Allow", http.MethodGet)
	h.sendResponseJsonError(resp, http.StatusMethodNotAllowed, errors.Errorf("invalid request method: %s", req.Method))
}

func networkInfo(b chaincode.Binding) NetworkInfo {
	return NetworkInfo{
		Name:        b.Network,
		Profile:     b.Profile,
		ChaincodeID: b.ChaincodeID,
		URL:         path.Join(URLBaseV1Networks, b.Network),
	}
}

func negotiateContentType(req *http.Request) error {
	acceptReq := req.Header.Get("Accept")
	if len(acceptReq) == 0 {
		return nil
	}

	for _, opt := range strings.Split(acceptReq, ",") {
		if strings.Contains(opt, "application/json") ||
			strings.Contains(opt, "application/*") ||
			strings.Contains(opt, "*/*") {
			return nil
		}
	}

	return errors.New("response Content-Type is application/json only")
}

func (h *HTTPHandler) sendResponseJsonError(resp http.ResponseWriter, code int, err error) {
	h.send(resp, code, &ErrorResponse{Error: err.Error()})
}

func (h *HTTPHandler) sendResponseOK(resp http.ResponseWriter, content interface{}) {
	h.send(resp, http.StatusOK, content)
}

func (h *HTTPHandler) send(resp http.ResponseWriter, code int, content interface{}) {
	resp.Header().Set("Content-Type", "application/json")
	resp.WriteHeader(code)
	if err := json.NewEncoder(resp).Encode(content); err != nil {
		h.logger.Errorf("failed to encode response, err: %s", err)
	}
}
