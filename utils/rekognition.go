package utils

import (
	"context"
	"fmt"
	"os"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"
)

// RekognitionLabeler runs a cheap label detection pass over an image. The
// scan pipeline uses it to reject photos that clearly contain no food before
// spending a vision-model call.
type RekognitionLabeler struct {
	client *rekognition.Client
}

func NewRekognitionLabeler(ctx context.Context) (*RekognitionLabeler, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(os.Getenv("AWS_REGION")))
	if err != nil {
		return nil, fmt.Errorf("unable to load AWS config for Rekognition: %w", err)
	}
	return &RekognitionLabeler{client: rekognition.NewFromConfig(cfg)}, nil
}

// DetectLabels returns the top labels (min confidence 75) for raw image bytes.
func (r *RekognitionLabeler) DetectLabels(ctx context.Context, image []byte) ([]string, error) {
	out, err := r.client.DetectLabels(ctx, &rekognition.DetectLabelsInput{
		Image:         &types.Image{Bytes: image},
		MaxLabels:     aws.Int32(10),
		MinConfidence: aws.Float32(75),
	})
	if err != nil {
		return nil, err
	}

	var labels []string
	for _, l := range out.Labels {
		labels = append(labels, aws.ToString(l.Name))
	}
	return labels, nil
}
