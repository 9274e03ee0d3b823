package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	MaxMessageLength = 255
	MaxTags          = 5
)

type CreatePostRequest struct {
	Message string   `json:"message" binding:"required"`
	Tags    []string `json:"tags"`
}

func (r CreatePostRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Message,
			validation.Required.Error("message is required"),
			validation.Length(1, MaxMessageLength).Error("message cannot be more than 255 characters"),
		),
		validation.Field(&r.Tags,
			validation.Length(0, MaxTags).Error("tags cannot be more than 5"),
		),
	)
}

type UpdatePostRequest struct {
	Message string   `json:"message" binding:"required"`
	Tags    []string `json:"tags"`
}

func (r UpdatePostRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Message,
			validation.Required.Error("message is required"),
			validation.Length(1, MaxMessageLength).Error("message cannot be more than 255 characters"),
		),
		validation.Field(&r.Tags,
			validation.Length(0, MaxTags).Error("tags cannot be more than 5"),
		),
	)
}
