// Package miro provides an HTTP client for the Miro REST API v2.
//
// # Overview
//
// This package creates and manages boards and widgets on Miro
// (https://miro.com), the collaborative whiteboard the publisher targets.
// It covers the widget types a diagram upload needs: shapes, sticky notes,
// texts, frames, connectors, cards, and embeds.
//
// # Usage
//
//	client := miro.NewClient(backend, token, time.Hour)
//
//	board, err := client.CreateBoard(ctx, "PROC - Purchasing", "")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	item, err := client.CreateShape(ctx, board.ID, miro.Shape{
//	    Shape:   "rectangle",
//	    Content: "Approve request",
//	    X:       200,
//	    Y:       100,
//	    Width:   160,
//	    Height:  80,
//	})
//
// # Coordinates
//
// Miro positions widgets by their center, so every X/Y in this package is a
// center coordinate. Callers holding top-left geometry add half the width
// and height before calling.
//
// # Styles
//
// Shape styles ([ShapeStyle]) carry numeric values as strings ("1", "14",
// "0.2") because that is what the API accepts. Connector strokes
// ([ConnectorStyle]) are the exception: StrokeWidth is a JSON number.
//
// # Caching
//
// Only [Client.GetBoard] is cached; boards are looked up repeatedly during
// a sync and change rarely. Writes and [Client.ListItems] always hit the
// API.
//
// # Errors
//
// Methods return the shared [integrations] sentinels: ErrNotFound for
// missing boards, ErrUnauthorized for bad tokens, ErrRateLimited and
// ErrNetwork for transient failures.
package miro
