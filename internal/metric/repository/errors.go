package repository

import "errors"

var (
	ErrMetricNotFound     = errors.New("repository: metric not found")
	ErrMetricCreateFailed = errors.New("repository: failed to create metric")
	ErrMetricUpdateFailed = errors.New("repository: failed to update metric")
	ErrMetricDeleteFailed = errors.New("repository: failed to delete metric")
)
