package utils

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/Telerehab-Labs/telerehab-go-sdk/models"
)

// EstimatorClient calls the external pose-estimation service. The model
// itself is out of scope here: we only ship a JPEG frame and get back the
// keypoints it found.
type EstimatorClient struct {
	Endpoint string
	APIKey   string
	Client   *http.Client
}

type estimateRequest struct {
	Image string `json:"image"` // base64-encoded JPEG
}

type estimateResponse struct {
	Poses []models.Pose `json:"poses"`
}

// NewEstimatorClient reads POSE_ESTIMATOR_ENDPOINT (required) and
// POSE_ESTIMATOR_API_KEY (optional) from the environment.
func NewEstimatorClient() (*EstimatorClient, error) {
	endpoint := os.Getenv("POSE_ESTIMATOR_ENDPOINT")
	if endpoint == "" {
		return nil, fmt.Errorf("POSE_ESTIMATOR_ENDPOINT environment variable is not set")
	}

	return &EstimatorClient{
		Endpoint: endpoint,
		APIKey:   os.Getenv("POSE_ESTIMATOR_API_KEY"),
		Client:   &http.Client{Timeout: 10 * time.Second},
	}, nil
}

// EstimatePoses sends one frame to the estimator and returns every body it
// detected. An empty slice is a normal answer, not an error.
func (c *EstimatorClient) EstimatePoses(ctx context.Context, imageData []byte) ([]models.Pose, error) {
	reqBody := estimateRequest{Image: base64.StdEncoding.EncodeToString(imageData)}
	reqBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal estimator request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.Endpoint, bytes.NewBuffer(reqBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to create estimator request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call estimator: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read estimator response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("estimator returned status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	var response estimateResponse
	if err := json.Unmarshal(bodyBytes, &response); err != nil {
		return nil, fmt.Errorf("failed to unmarshal estimator response: %w", err)
	}

	return response.Poses, nil
}

// BestPose picks the single body the frame cycle should judge: the one the
// estimator scored highest, falling back to the mean keypoint score when no
// overall score was reported. ok is false when no body was detected.
func BestPose(poses []models.Pose) (models.Pose, bool) {
	if len(poses) == 0 {
		return models.Pose{}, false
	}

	best := poses[0]
	bestScore := poseScore(best)
	for _, pose := range poses[1:] {
		if score := poseScore(pose); score > bestScore {
			best = pose
			bestScore = score
		}
	}
	return best, true
}

func poseScore(pose models.Pose) float64 {
	if pose.Score > 0 {
		return pose.Score
	}
	if len(pose.Keypoints) == 0 {
		return 0
	}
	sum := 0.0
	for _, kp := range pose.Keypoints {
		sum += kp.Score
	}
	return sum / float64(len(pose.Keypoints))
}
