// Copyright 2024 The Erigon Authors
// This file is part of Erigon.
//
// Erigon is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Erigon is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Erigon. If not, see <http://www.gnu.org/licenses/>.

package evaluator

import (
	"github.com/fresszonesongs/freezone/core/objects"
	"github.com/fresszonesongs/freezone/core/types"
)

func evalWitnessUpdate(ctx Context, operation types.Operation) error {
	op := operation.(types.WitnessUpdateOp)
	if _, err := ctx.GetAccount(op.Owner); err != nil {
		return err
	}
	w, ok := ctx.GetWitness(op.Owner)
	if !ok {
		ctx.CreateWitness(func(w *objects.Witness) {
			w.Owner = op.Owner
			w.SigningKey = op.SigningKey
			w.Url = op.Url
			w.Category = objects.WitnessElected
		})
		return nil
	}
	ctx.ModifyWitness(w, func(w *objects.Witness) {
		w.SigningKey = op.SigningKey
		w.Url = op.Url
	})
	return nil
}

func evalFeedPublish(ctx Context, operation types.Operation) error {
	op := operation.(types.FeedPublishOp)
	w, ok := ctx.GetWitness(op.Publisher)
	if !ok {
		return ErrUnknownEntity
	}
	ctx.ModifyWitness(w, func(w *objects.Witness) {
		w.LastSbdFeed = op.ExchangeRate
		w.SbdFeedTime = ctx.Now()
	})
	ctx.PublishFeed(op.ExchangeRate)
	return nil
}
