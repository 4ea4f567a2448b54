package rekognition

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/rekognition"
)

// mockLivenessAPI is a mock implementation of LivenessAPI for testing
type mockLivenessAPI struct {
	createSessionFunc func(ctx context.Context, params *rekognition.CreateFaceLivenessSessionInput, optFns ...func(*rekognition.Options)) (*rekognition.CreateFaceLivenessSessionOutput, error)
	getResultsFunc    func(ctx context.Context, params *rekognition.GetFaceLivenessSessionResultsInput, optFns ...func(*rekognition.Options)) (*rekognition.GetFaceLivenessSessionResultsOutput, error)
}

func (m *mockLivenessAPI) CreateFaceLivenessSession(ctx context.Context, params *rekognition.CreateFaceLivenessSessionInput, optFns ...func(*rekognition.Options)) (*rekognition.CreateFaceLivenessSessionOutput, error) {
	if m.createSessionFunc != nil {
		return m.createSessionFunc(ctx, params, optFns...)
	}
	return &rekognition.CreateFaceLivenessSessionOutput{}, nil
}

func (m *mockLivenessAPI) GetFaceLivenessSessionResults(ctx context.Context, params *rekognition.GetFaceLivenessSessionResultsInput, optFns ...func(*rekognition.Options)) (*rekognition.GetFaceLivenessSessionResultsOutput, error) {
	if m.getResultsFunc != nil {
		return m.getResultsFunc(ctx, params, optFns...)
	}
	return &rekognition.GetFaceLivenessSessionResultsOutput{}, nil
}
