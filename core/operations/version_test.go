/*
Copyright IBM Corp All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package operations

import (
	"net/http"
	"net/http/httptest"

	"github.com/hyperledger/fabric-bnc/core/operations/fakes"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Version", func() {
	It("returns the version on GET", func() {
		resp := httptest.NewRecorder()

		versionInfoHandler := &VersionInfoHandler{Name: "bnpeer", Version: "latest"}
		versionInfoHandler.ServeHTTP(resp, &http.Request{Method: http.MethodGet})
		Expect(resp.Result().StatusCode).To(Equal(http.StatusOK))
		Expect(resp.Result().Header.Get("Content-Type")).To(Equal("application/json"))
		Expect(resp.Body).To(MatchJSON(`{"Name": "bnpeer", "Version": "latest"}`))
	})

	It("rejects other methods", func() {
		resp := httptest.NewRecorder()

		versionInfoHandler := &VersionInfoHandler{}
		versionInfoHandler.ServeHTTP(resp, &http.Request{Method: http.MethodPut})
		Expect(resp.Result().StatusCode).To(Equal(http.StatusBadRequest))
		Expect(resp.Body).To(MatchJSON(`{"Error": "invalid request method: PUT"}`))
	})

	It("logs payloads that cannot be encoded", func() {
		resp := httptest.NewRecorder()
		logger := &fakes.Logger{}

		versionInfoHandler := &VersionInfoHandler{Logger: logger}
		versionInfoHandler.sendResponse(resp, http.StatusOK, make(chan int))
		Expect(resp.Result().StatusCode).To(Equal(http.StatusInternalServerError))
		Expect(logger.WarnfCallCount()).To(Equal(1))
	})
})
