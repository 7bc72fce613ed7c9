package model

import (
	"testing"

	"canteen_manager/constants"

	"github.com/stretchr/testify/assert"
)

func TestCanteenRequestCanReapply(t *testing.T) {
	assert.True(t, (&CanteenRequest{Status: constants.REQUEST_REJECTED}).CanReapply())
	assert.False(t, (&CanteenRequest{Status: constants.REQUEST_PENDING}).CanReapply())
	assert.False(t, (&CanteenRequest{Status: constants.REQUEST_APPROVED}).CanReapply())
}

func TestCanteenRequestIsOpen(t *testing.T) {
	assert.True(t, (&CanteenRequest{Status: constants.REQUEST_PENDING}).IsOpen())
	assert.True(t, (&CanteenRequest{Status: constants.REQUEST_APPROVED}).IsOpen())
	assert.False(t, (&CanteenRequest{Status: constants.REQUEST_REJECTED}).IsOpen())
}
