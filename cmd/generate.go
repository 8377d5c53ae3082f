package cmd

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gnzdotmx/captionflow/internal/generator"
	snscontent "github.com/gnzdotmx/captionflow/internal/modules/sns_content"
	"github.com/gnzdotmx/captionflow/internal/utils"
	"github.com/spf13/cobra"
)

// generateFlags are shared by the caption and post commands
type generateFlags struct {
	topic        string
	topicFile    string
	url          string
	youtubeVideo string
	platform     string
	tone         string
	length       string
	language     string
	count        int
	hashtags     bool
	cta          bool
	brand        string
	audience     string
	output       string
}

func (f *generateFlags) register(cmd *cobra.Command, withCount bool) {
	cmd.Flags().StringVarP(&f.topic, "topic", "t", "", "Topic to write about")
	cmd.Flags().StringVar(&f.topicFile, "topic-file", "", "Text file holding the topic")
	cmd.Flags().StringVar(&f.url, "url", "", "Web page describing the topic")
	cmd.Flags().StringVar(&f.youtubeVideo, "youtube-video", "", "YouTube video ID or URL describing the topic")
	cmd.Flags().StringVarP(&f.platform, "platform", "p", "", "Target platform (required)")
	cmd.Flags().StringVar(&f.tone, "tone", "", "Writing tone")
	cmd.Flags().StringVar(&f.length, "length", "", "Length: short, medium or long (default medium)")
	cmd.Flags().StringVar(&f.language, "language", "", "Output language (default from config)")
	cmd.Flags().BoolVar(&f.hashtags, "hashtags", true, "Include hashtags")
	cmd.Flags().BoolVar(&f.cta, "cta", true, "Include a call to action")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "YAML file to write (default: a new run directory)")
	if withCount {
		cmd.Flags().IntVarP(&f.count, "count", "n", 0, "Number of captions, 1-10 (default from config)")
	} else {
		cmd.Flags().StringVar(&f.brand, "brand", "", "Brand voice")
		cmd.Flags().StringVar(&f.audience, "audience", "", "Target audience")
	}
	_ = cmd.MarkFlagRequired("platform")
}

// params turns the flags into module parameters writing under outputDir
func (f *generateFlags) params(outputDir, fileName, language string) map[string]interface{} {
	params := map[string]interface{}{
		"platform":        f.platform,
		"tone":            f.tone,
		"length":          f.length,
		"language":        language,
		"includeHashtags": f.hashtags,
		"includeCTA":      f.cta,
		"output":          outputDir,
		"outputFileName":  fileName,
	}
	if f.language != "" {
		params["language"] = f.language
	}
	for key, value := range map[string]string{
		"topic":        f.topic,
		"topicFile":    f.topicFile,
		"url":          f.url,
		"youtubeVideo": f.youtubeVideo,
		"brand":        f.brand,
		"audience":     f.audience,
	} {
		if value != "" {
			params[key] = value
		}
	}
	if f.count > 0 {
		params["count"] = f.count
	}
	return params
}

func runGenerate(cmd *cobra.Command, f *generateFlags, post bool) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	ctx, stop := signalContext(cmd)
	defer stop()

	gen, err := newGenerator(cfg)
	if err != nil {
		return err
	}
	resolver, err := newResolver(ctx, cfg)
	if err != nil {
		return err
	}

	var module *snscontent.Module
	if post {
		module = snscontent.NewPost(gen, resolver)
	} else {
		module = snscontent.NewCaption(gen, resolver, cfg.Generation.CaptionCount)
	}

	outputDir, fileName := filepath.Dir(f.output), strings.TrimSuffix(filepath.Base(f.output), filepath.Ext(f.output))
	if f.output == "" {
		outputDir, err = cfg.RunDirectory(module.Name(), time.Now())
		if err != nil {
			return err
		}
		fileName = module.Name()
	}

	result, err := module.Execute(ctx, f.params(outputDir, fileName, cfg.Generation.Language))
	if err != nil {
		return err
	}

	if out, ok := result.Metadata["output"].(generator.Output); ok {
		printOutput(cmd, out)
	}
	return nil
}

func printOutput(cmd *cobra.Command, out generator.Output) {
	w := cmd.OutOrStdout()
	source := out.Provider
	if out.FallbackUsed {
		source += ", with template fallback"
	}
	fmt.Fprintln(w, utils.Dim(fmt.Sprintf("Generated by %s", source)))

	for i, r := range out.Results {
		fmt.Fprintf(w, "\n%s\n%s\n", utils.Highlight(fmt.Sprintf("#%d", i+1)), r.Text)
		if len(r.Hashtags) > 0 {
			tags := make([]string, len(r.Hashtags))
			for j, tag := range r.Hashtags {
				tags[j] = "#" + tag
			}
			fmt.Fprintln(w, utils.Hashtag(strings.Join(tags, " ")))
		}
		if r.CTA != "" {
			fmt.Fprintln(w, utils.Success(r.CTA))
		}
		fmt.Fprintln(w, utils.Dim(fmt.Sprintf("%d characters, readability %.0f", r.CharacterCount, r.Readability)))
	}
}
