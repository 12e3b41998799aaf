package models

// JointName identifies one of the 17 body landmarks emitted by the pose
// estimator (COCO keypoint order: nose, eyes, ears, shoulders, elbows,
// wrists, hips, knees, ankles).
type JointName string

const (
	Nose          JointName = "nose"
	LeftEye       JointName = "left_eye"
	RightEye      JointName = "right_eye"
	LeftEar       JointName = "left_ear"
	RightEar      JointName = "right_ear"
	LeftShoulder  JointName = "left_shoulder"
	RightShoulder JointName = "right_shoulder"
	LeftElbow     JointName = "left_elbow"
	RightElbow    JointName = "right_elbow"
	LeftWrist     JointName = "left_wrist"
	RightWrist    JointName = "right_wrist"
	LeftHip       JointName = "left_hip"
	RightHip      JointName = "right_hip"
	LeftKnee      JointName = "left_knee"
	RightKnee     JointName = "right_knee"
	LeftAnkle     JointName = "left_ankle"
	RightAnkle    JointName = "right_ankle"
)

// AllJoints lists every joint the estimator can report, in skeleton order.
var AllJoints = []JointName{
	Nose, LeftEye, RightEye, LeftEar, RightEar,
	LeftShoulder, RightShoulder, LeftElbow, RightElbow,
	LeftWrist, RightWrist, LeftHip, RightHip,
	LeftKnee, RightKnee, LeftAnkle, RightAnkle,
}

// Keypoint is one named landmark in source-frame pixel coordinates with the
// estimator's confidence score in [0,1].
type Keypoint struct {
	Name  JointName `json:"name"`
	X     float64   `json:"x"`
	Y     float64   `json:"y"`
	Score float64   `json:"score"`
}

// Pose is the full set of keypoints for one detected body in one frame.
// Poses are produced and discarded every frame; nothing in the engine holds
// onto one between calls.
type Pose struct {
	Keypoints []Keypoint `json:"keypoints"`
	Score     float64    `json:"score"`
}
