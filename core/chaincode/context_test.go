/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package chaincode_test

import (
	"github.com/golang/protobuf/proto"
	"github.com/hyperledger/fabric-bnc/core/chaincode"
	"github.com/hyperledger/fabric-bnc/core/chaincode/mock"
	"github.com/hyperledger/fabric-bnc/core/identity"
	"github.com/hyperledger/fabric-protos-go/msp"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Context", func() {
	var (
		engine *mock.Engine
		id     *identity.Identity
		conn   chaincode.ConnectionInfo
	)

	BeforeEach(func() {
		engine = &mock.Engine{}
		id = &identity.Identity{
			Identifier:  "abc123",
			Name:        "bob1",
			Issuer:      "def456",
			Certificate: "-----BEGIN CERTIFICATE-----",
		}
		conn = chaincode.ConnectionInfo{Profile: "defaultProfile", Network: "net", MSPID: "Org1MSP"}
	})

	It("exposes the calling identity", func() {
		ctx, err := chaincode.NewContext(engine, id, conn)
		Expect(err).NotTo(HaveOccurred())

		Expect(ctx.Engine()).To(BeIdenticalTo(engine))
		Expect(ctx.Connection()).To(Equal(conn))
		ids := ctx.IdentityService()
		Expect(ids.Identifier()).To(Equal("abc123"))
		Expect(ids.Name()).To(Equal("bob1"))
		Expect(ids.Issuer()).To(Equal("def456"))
		Expect(ids.Certificate()).To(Equal([]byte("-----BEGIN CERTIFICATE-----")))
	})

	It("assigns a fresh transaction id per context", func() {
		ctx1, err := chaincode.NewContext(engine, id, conn)
		Expect(err).NotTo(HaveOccurred())
		ctx2, err := chaincode.NewContext(engine, id, conn)
		Expect(err).NotTo(HaveOccurred())

		Expect(ctx1.TxID()).NotTo(BeEmpty())
		Expect(ctx1.TxID()).NotTo(Equal(ctx2.TxID()))
	})

	It("serializes the creator", func() {
		ctx, err := chaincode.NewContext(engine, id, conn)
		Expect(err).NotTo(HaveOccurred())

		raw, err := ctx.Creator()
		Expect(err).NotTo(HaveOccurred())
		creator := &msp.SerializedIdentity{}
		Expect(proto.Unmarshal(raw, creator)).To(Succeed())
		Expect(creator.Mspid).To(Equal("Org1MSP"))
		Expect(creator.IdBytes).To(Equal([]byte(id.Certificate)))
	})

	It("requires an identity", func() {
		_, err := chaincode.NewContext(engine, nil, conn)
		Expect(err).To(MatchError("an identity is required to build an execution context"))
	})
})

var _ = Describe("EngineError", func() {
	It("recognizes conflicts by status", func() {
		err := &chaincode.EngineError{Status: chaincode.StatusConflict, Message: "network net is deployed"}
		Expect(err.AlreadyExists()).To(BeTrue())
		Expect(err).To(MatchError("chaincode returned status 409: network net is deployed"))
	})

	It("recognizes conflicts reported with a generic status", func() {
		err := &chaincode.EngineError{Status: 500, Message: "business network net already exists"}
		Expect(err.AlreadyExists()).To(BeTrue())
	})

	It("does not treat other failures as conflicts", func() {
		err := &chaincode.EngineError{Status: 500, Message: "out of gas"}
		Expect(err.AlreadyExists()).To(BeFalse())
	})
})

var _ = Describe("ChaincodeNotFoundError", func() {
	It("describes unbound contexts", func() {
		Expect(chaincode.ChaincodeNotFoundError{}).To(MatchError("no chaincode is bound to the security context"))
	})
})
