// Copyright (c) 2023 - for information on the respective copyright owner
// see the NOTICE file and/or the repository at
// https://github.com/interledger-labs/ilp-node
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ilp

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"math/big"
)

// Argument names used in InvalidArgument errors raised by the packet
// builder.
const (
	ArgNameDestinationAccount ArgumentName = "destinationAccount"
	ArgNameDestinationAmount  ArgumentName = "destinationAmount"
	ArgNameData               ArgumentName = "data"
)

// PaymentPacket is an immutable value representing one interledger payment.
//
// A packet is attached to exactly one transfer leg per ledger hop and must
// be preserved byte-for-byte across hops, so that the receiver can verify
// its integrity end-to-end. Its data payload is set by higher transport and
// condition layers and never interpreted here.
//
// Construct packets only through the PacketBuilder.
type PaymentPacket struct {
	destinationAccount Address
	destinationAmount  *big.Int
	data               []byte
}

// DestinationAccount returns the address of the account where the receiver
// should ultimately receive the payment. It is never a prefix.
func (p PaymentPacket) DestinationAccount() Address {
	return p.destinationAccount
}

// DestinationAmount returns the amount to deliver, in the smallest
// indivisible unit of the destination ledger's asset. No implicit scaling is
// ever applied. The returned value is a copy.
func (p PaymentPacket) DestinationAmount() *big.Int {
	return new(big.Int).Set(p.destinationAmount)
}

// Data returns the opaque data payload of the packet. A fresh copy is
// returned on every call, so no shared mutable buffer ever escapes.
func (p PaymentPacket) Data() []byte {
	data := make([]byte, len(p.data))
	copy(data, p.data)
	return data
}

// Equal reports whether the two packets are structurally equal over all
// three fields. This equality underlies integrity verification by a
// receiver.
func (p PaymentPacket) Equal(other PaymentPacket) bool {
	return p.destinationAccount == other.destinationAccount &&
		p.destinationAmount.Cmp(other.destinationAmount) == 0 &&
		bytes.Equal(p.data, other.data)
}

// Hash returns a structural hash of the packet, computed over a canonical
// encoding of its three fields: the destination address string, the amount
// in canonical base-10 form and the length-prefixed raw data.
func (p PaymentPacket) Hash() [32]byte {
	h := sha256.New()
	var lenBuf [binary.MaxVarintLen64]byte

	addr := p.destinationAccount.String()
	n := binary.PutUvarint(lenBuf[:], uint64(len(addr)))
	h.Write(lenBuf[:n])
	h.Write([]byte(addr))

	amount := p.destinationAmount.Text(10)
	n = binary.PutUvarint(lenBuf[:], uint64(len(amount)))
	h.Write(lenBuf[:n])
	h.Write([]byte(amount))

	n = binary.PutUvarint(lenBuf[:], uint64(len(p.data)))
	h.Write(lenBuf[:n])
	h.Write(p.data)

	var sum [32]byte
	copy(sum[:], h.Sum(nil))
	return sum
}

// PacketBuilder builds a PaymentPacket, requiring all three fields to be
// explicitly set before Build. Each setter validates its input and fails
// fast; Build fails if any field was never set, and no partial packet is
// ever returned.
type PacketBuilder struct {
	destinationAccount *Address
	destinationAmount  *big.Int
	data               []byte
}

// NewPacketBuilder returns an empty packet builder.
func NewPacketBuilder() *PacketBuilder {
	return &PacketBuilder{}
}

// DestinationAccount sets the destination account of the packet. The
// address must be a terminal account, not a prefix.
//
// If there is an error, it will be an APIError with code ErrInvalidArgument.
func (b *PacketBuilder) DestinationAccount(addr Address) APIError {
	if addr.IsZero() {
		return NewAPIErrInvalidArgument(ArgNameDestinationAccount, "", "address must not be the zero value")
	}
	if addr.IsPrefix() {
		return NewAPIErrInvalidArgument(ArgNameDestinationAccount, addr.String(),
			"a prefix must not be used as a payment destination")
	}
	b.destinationAccount = &addr
	return nil
}

// DestinationAmount sets the destination amount of the packet, denominated
// in the destination ledger's smallest indivisible unit.
//
// If there is an error, it will be an APIError with code ErrInvalidArgument.
func (b *PacketBuilder) DestinationAmount(amount *big.Int) APIError {
	if amount == nil {
		return NewAPIErrInvalidArgument(ArgNameDestinationAmount, "", "amount must not be nil")
	}
	if amount.Sign() < 0 {
		return NewAPIErrInvalidArgument(ArgNameDestinationAmount, amount.Text(10), "amount must not be negative")
	}
	b.destinationAmount = new(big.Int).Set(amount)
	return nil
}

// Data sets the opaque data payload of the packet. It may be empty but not
// nil. The bytes are copied, so later mutation of the passed slice does not
// affect the built packet.
//
// If there is an error, it will be an APIError with code ErrInvalidArgument.
func (b *PacketBuilder) Data(data []byte) APIError {
	if data == nil {
		return NewAPIErrInvalidArgument(ArgNameData, "", "data may be empty but must not be nil")
	}
	dataCopy := make([]byte, len(data))
	copy(dataCopy, data)
	b.data = dataCopy
	return nil
}

// Build constructs the immutable packet.
//
// If there is an error, it will be an APIError with code ErrIncompleteBuilder
// naming the fields that were never set.
func (b *PacketBuilder) Build() (PaymentPacket, APIError) {
	var missing []string
	if b.destinationAccount == nil {
		missing = append(missing, string(ArgNameDestinationAccount))
	}
	if b.destinationAmount == nil {
		missing = append(missing, string(ArgNameDestinationAmount))
	}
	if b.data == nil {
		missing = append(missing, string(ArgNameData))
	}
	if len(missing) != 0 {
		return PaymentPacket{}, NewAPIErrIncompleteBuilder(missing...)
	}
	return PaymentPacket{
		destinationAccount: *b.destinationAccount,
		destinationAmount:  new(big.Int).Set(b.destinationAmount),
		data:               b.data,
	}, nil
}
