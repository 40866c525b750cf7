//go:build cv

package logodetect

import (
	"fmt"

	"gocv.io/x/gocv"

	"github.com/slidekit/visioncv/imaging"
)

// Available reports whether the OpenCV backend is compiled in.
func Available() bool { return true }

// Detect searches for the reference logo inside the target image.
//
// ORB keypoints and descriptors are computed for both images and matched
// with a brute-force Hamming matcher with cross-check. Matches with
// distance below 64 are kept; fewer than 8 of them yields Found=false. A
// RANSAC homography (reprojection threshold 5.0) localizes the logo; its
// inlier count becomes MatchQualityScore and the reference corners are
// projected through it to form the bounding box.
func Detect(reference, target *imaging.Image) (*Result, error) {
	refMat, err := toGrayMat(reference)
	if err != nil {
		return nil, err
	}
	defer refMat.Close()
	tgtMat, err := toGrayMat(target)
	if err != nil {
		return nil, err
	}
	defer tgtMat.Close()

	orb := gocv.NewORB()
	defer orb.Close()

	noMask := gocv.NewMat()
	defer noMask.Close()

	refKps, refDesc := orb.DetectAndCompute(refMat, noMask)
	defer refDesc.Close()
	tgtKps, tgtDesc := orb.DetectAndCompute(tgtMat, noMask)
	defer tgtDesc.Close()

	if refDesc.Empty() || tgtDesc.Empty() {
		return &Result{Found: false}, nil
	}

	matcher := gocv.NewBFMatcherWithParams(gocv.NormHamming, true)
	defer matcher.Close()

	var good []gocv.DMatch
	for _, m := range matcher.Match(refDesc, tgtDesc) {
		if m.Distance < maxHammingDistance {
			good = append(good, m)
		}
	}
	if len(good) < minGoodMatches {
		return &Result{Found: false, MatchCount: len(good)}, nil
	}

	srcPts := gocv.NewMatWithSize(len(good), 1, gocv.MatTypeCV64FC2)
	defer srcPts.Close()
	dstPts := gocv.NewMatWithSize(len(good), 1, gocv.MatTypeCV64FC2)
	defer dstPts.Close()
	for i, m := range good {
		srcPts.SetDoubleAt(i, 0, refKps[m.QueryIdx].X)
		srcPts.SetDoubleAt(i, 1, refKps[m.QueryIdx].Y)
		dstPts.SetDoubleAt(i, 0, tgtKps[m.TrainIdx].X)
		dstPts.SetDoubleAt(i, 1, tgtKps[m.TrainIdx].Y)
	}

	inlierMask := gocv.NewMat()
	defer inlierMask.Close()
	homography := gocv.FindHomography(srcPts, &dstPts, gocv.HomograpyMethodRANSAC,
		ransacReprojThreshold, &inlierMask, 2000, 0.995)
	defer homography.Close()

	if homography.Empty() {
		return &Result{Found: false, MatchCount: len(good)}, nil
	}

	inliers := 0
	for i := 0; i < inlierMask.Rows(); i++ {
		if inlierMask.GetUCharAt(i, 0) != 0 {
			inliers++
		}
	}

	corners := projectCorners(homography, reference.Width, reference.Height)

	return &Result{
		Found:             true,
		MatchCount:        len(good),
		MatchQualityScore: inliers,
		Corners:           corners,
		BoundingBox:       boxAround(corners),
	}, nil
}

// projectCorners maps the reference corners through the homography.
func projectCorners(h gocv.Mat, width, height int) []Point {
	src := gocv.NewMatWithSize(4, 1, gocv.MatTypeCV64FC2)
	defer src.Close()
	coords := [4][2]float64{
		{0, 0},
		{float64(width), 0},
		{float64(width), float64(height)},
		{0, float64(height)},
	}
	for i, c := range coords {
		src.SetDoubleAt(i, 0, c[0])
		src.SetDoubleAt(i, 1, c[1])
	}

	dst := gocv.NewMat()
	defer dst.Close()
	gocv.PerspectiveTransform(src, &dst, h)

	corners := make([]Point, 4)
	for i := range corners {
		corners[i] = Point{
			X: int(dst.GetDoubleAt(i, 0)),
			Y: int(dst.GetDoubleAt(i, 1)),
		}
	}
	return corners
}

func toGrayMat(img *imaging.Image) (gocv.Mat, error) {
	rgb, err := gocv.ImageToMatRGB(img.ToNRGBA())
	if err != nil {
		return gocv.Mat{}, fmt.Errorf("failed to convert image: %w", err)
	}
	defer rgb.Close()

	gray := gocv.NewMat()
	gocv.CvtColor(rgb, &gray, gocv.ColorRGBToGray)
	return gray, nil
}
