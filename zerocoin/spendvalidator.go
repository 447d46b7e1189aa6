// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package zerocoin

import (
	"math/big"
	"runtime"

	"github.com/Umbracoindevs/UMBRA-v2/chain"
)

// proofItem holds a zerocoin spend along with the accumulator value its
// membership proof must verify against.
type proofItem struct {
	tx          *chain.Tx
	index       int
	spend       *chain.ZerocoinSpend
	accumulator *big.Int
}

// spendValidator provides a type which asynchronously verifies membership
// proofs.  It provides several channels for communication and a processing
// function that is intended to be run in multiple goroutines.
type spendValidator struct {
	validateChan chan *proofItem
	quitChan     chan struct{}
	resultChan   chan error
	acc          CryptoAccumulator
}

// sendResult sends the result of a proof verification on the internal result
// channel while respecting the quit channel.  This allows orderly shutdown
// when the validation process is aborted early due to a failed proof in one
// of the other goroutines.
func (v *spendValidator) sendResult(result error) {
	select {
	case v.resultChan <- result:
	case <-v.quitChan:
	}
}

// validateHandler consumes items to verify from the internal validate channel
// and returns the result on the internal result channel.  It must be run as
// a goroutine.
func (v *spendValidator) validateHandler() {
out:
	for {
		select {
		case item := <-v.validateChan:
			spend := item.spend
			if !v.acc.Verify(item.accumulator, spend.Proof,
				spend.Serial, spend.Denomination) {

				v.sendResult(chain.RuleErrorf(
					chain.ErrAccumulatorProofInvalid,
					"membership proof of spend %d of "+
						"transaction %v (%v) does not verify",
					item.index, item.tx.Hash(), spend))
				break out
			}

			v.sendResult(nil)

		case <-v.quitChan:
			break out
		}
	}
}

// newSpendValidator returns a new instance of spendValidator to be used for
// verifying membership proofs asynchronously.
func newSpendValidator(acc CryptoAccumulator) *spendValidator {
	return &spendValidator{
		validateChan: make(chan *proofItem),
		quitChan:     make(chan struct{}),
		resultChan:   make(chan error),
		acc:          acc,
	}
}

// Validate verifies the proofs of all passed items using multiple
// goroutines.  It returns the first failure.
func (v *spendValidator) Validate(items []*proofItem) error {
	if len(items) == 0 {
		return nil
	}

	// Limit the number of goroutines to do proof verification based on
	// the number of processor cores.
	maxGoRoutines := runtime.NumCPU() * 3
	if maxGoRoutines <= 0 {
		maxGoRoutines = 1
	}
	if maxGoRoutines > len(items) {
		maxGoRoutines = len(items)
	}

	for i := 0; i < maxGoRoutines; i++ {
		go v.validateHandler()
	}

	// The quit channel is closed when any proof fails so all processing
	// goroutines exit regardless of which item failed.
	numItems := len(items)
	currentItem := 0
	processedItems := 0
	for processedItems < numItems {
		// Only send items while there are still items that need to
		// be processed.  The select statement will never select a nil
		// channel.
		var validateChan chan *proofItem
		var item *proofItem
		if currentItem < numItems {
			validateChan = v.validateChan
			item = items[currentItem]
		}

		select {
		case validateChan <- item:
			currentItem++

		case err := <-v.resultChan:
			processedItems++
			if err != nil {
				close(v.quitChan)
				return err
			}
		}
	}

	close(v.quitChan)
	return nil
}
